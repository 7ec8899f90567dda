package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Elem interface {
	Key() string
}

type StringElem string

func (s StringElem) Key() string {
	return string(s)
}

type IntElem int

func (i IntElem) Key() string {
	return strconv.Itoa(int(i))
}

// MultiSet is an unordered collection with multiplicities
type MultiSet []Elem

func (m MultiSet) toMap() map[string][]Elem {
	result := make(map[string][]Elem)
	for _, e := range m {
		key := e.Key()
		if _, ok := result[key]; !ok {
			result[key] = make([]Elem, 0)
		}
		result[key] = append(result[key], e)
	}
	return result
}

func (m MultiSet) keysNMultiplicities() ([]string, []int) {
	sMap := m.toMap()
	sortedKeys := make([]string, 0)
	for k := range sMap {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)
	multiplicities := make([]int, len(sortedKeys))
	for i, sKey := range sortedKeys {
		multiplicities[i] = len(sMap[sKey])
	}
	return sortedKeys, multiplicities
}

// Count returns the multiplicity of the key
func (m MultiSet) Count(key string) int {
	count := 0
	for _, e := range m {
		if e.Key() == key {
			count++
		}
	}
	return count
}

// Hash is a canonical string over the elements, independent of their order
func (m MultiSet) Hash() string {
	keys, multiplicities := m.keysNMultiplicities()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%sx%d", k, multiplicities[i])
	}
	return strings.Join(parts, "|")
}
