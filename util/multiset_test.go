package util

import (
	"testing"
)

func TestMultiSetHashIsOrderIndependent(t *testing.T) {
	a := MultiSet{StringElem("a"), StringElem("b"), StringElem("b")}
	b := MultiSet{StringElem("b"), StringElem("a"), StringElem("b")}
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ for the same multiset: %q vs %q", a.Hash(), b.Hash())
	}
	if a.Hash() == "" {
		t.Errorf("expected a non-empty hash")
	}
}

func TestMultiSetHashCountsMultiplicity(t *testing.T) {
	a := MultiSet{StringElem("a"), StringElem("b")}
	b := MultiSet{StringElem("a"), StringElem("b"), StringElem("b")}
	if a.Hash() == b.Hash() {
		t.Errorf("multiplicity should change the hash")
	}
}

func TestMultiSetCount(t *testing.T) {
	m := MultiSet{IntElem(1), IntElem(2), IntElem(1)}
	if m.Count("1") != 2 {
		t.Errorf("expected count 2, got %d", m.Count("1"))
	}
	if m.Count("3") != 0 {
		t.Errorf("expected count 0, got %d", m.Count("3"))
	}
}
