package collector

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Minimal NPY v1.0 reader and writer for the two dtypes the saver uses,
// uint8 frames and int64 action slots. Files are readable with numpy.load.

const npyMagic = "\x93NUMPY"

func npyHeader(descr string, shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, shapeStr)

	// pad so that magic + version + length + header is a multiple of 64
	total := len(npyMagic) + 2 + 2 + len(header) + 1
	pad := (64 - total%64) % 64
	header += strings.Repeat(" ", pad) + "\n"

	buf := new(bytes.Buffer)
	buf.WriteString(npyMagic)
	buf.WriteByte(1)
	buf.WriteByte(0)
	binary.Write(buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	return buf.Bytes()
}

// WriteUint8 saves the data as a uint8 array of the given shape
func WriteUint8(savePath string, data []uint8, shape []int) error {
	if err := checkShape(len(data), shape); err != nil {
		return err
	}
	f, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(npyHeader("|u1", shape)); err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// WriteInt64 saves the data as a little-endian int64 array of the given shape
func WriteInt64(savePath string, data []int64, shape []int) error {
	if err := checkShape(len(data), shape); err != nil {
		return err
	}
	f, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(npyHeader("<i8", shape)); err != nil {
		return err
	}
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	_, err = f.Write(buf)
	return err
}

func checkShape(n int, shape []int) error {
	expected := 1
	for _, d := range shape {
		expected *= d
	}
	if n != expected {
		return fmt.Errorf("data length %d does not match shape %v", n, shape)
	}
	return nil
}

func readHeader(bs []byte) (descr string, shape []int, offset int, err error) {
	if len(bs) < 10 || string(bs[:6]) != npyMagic {
		return "", nil, 0, fmt.Errorf("not an npy file")
	}
	if bs[6] != 1 {
		return "", nil, 0, fmt.Errorf("unsupported npy version %d.%d", bs[6], bs[7])
	}
	headerLen := int(binary.LittleEndian.Uint16(bs[8:10]))
	offset = 10 + headerLen
	if len(bs) < offset {
		return "", nil, 0, fmt.Errorf("truncated npy header")
	}
	header := string(bs[10:offset])

	descr, err = headerField(header, "descr")
	if err != nil {
		return "", nil, 0, err
	}
	shapeStr, err := headerTuple(header)
	if err != nil {
		return "", nil, 0, err
	}
	for _, part := range strings.Split(shapeStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return "", nil, 0, fmt.Errorf("bad shape entry %q", part)
		}
		shape = append(shape, d)
	}
	return descr, shape, offset, nil
}

func headerField(header, key string) (string, error) {
	marker := "'" + key + "': '"
	start := strings.Index(header, marker)
	if start < 0 {
		return "", fmt.Errorf("npy header missing %s", key)
	}
	rest := header[start+len(marker):]
	end := strings.Index(rest, "'")
	if end < 0 {
		return "", fmt.Errorf("npy header missing %s", key)
	}
	return rest[:end], nil
}

func headerTuple(header string) (string, error) {
	start := strings.Index(header, "(")
	end := strings.Index(header, ")")
	if start < 0 || end < start {
		return "", fmt.Errorf("npy header missing shape")
	}
	return header[start+1 : end], nil
}

// ReadUint8 loads a uint8 array and its shape
func ReadUint8(savePath string) ([]uint8, []int, error) {
	bs, err := os.ReadFile(savePath)
	if err != nil {
		return nil, nil, err
	}
	descr, shape, offset, err := readHeader(bs)
	if err != nil {
		return nil, nil, err
	}
	if descr != "|u1" {
		return nil, nil, fmt.Errorf("expected uint8 array, got %s", descr)
	}
	return bs[offset:], shape, nil
}

// ReadInt64 loads an int64 array and its shape
func ReadInt64(savePath string) ([]int64, []int, error) {
	bs, err := os.ReadFile(savePath)
	if err != nil {
		return nil, nil, err
	}
	descr, shape, offset, err := readHeader(bs)
	if err != nil {
		return nil, nil, err
	}
	if descr != "<i8" {
		return nil, nil, fmt.Errorf("expected int64 array, got %s", descr)
	}
	raw := bs[offset:]
	if len(raw)%8 != 0 {
		return nil, nil, fmt.Errorf("truncated int64 data")
	}
	data := make([]int64, len(raw)/8)
	for i := range data {
		data[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return data, shape, nil
}
