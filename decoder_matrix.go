// The MIT License (MIT)
//
// # Copyright (c) 2024 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package rlnc

// decoderMatrix is a growable row-major byte matrix: each row is a full
// coded piece (coding vector followed by payload). It owns its backing
// buffer exclusively; the Decoder that holds one never shares it.
type decoderMatrix struct {
	elements   []byte
	rows       int
	cols       int // pieceCount + pieceByteLen
	pieceCount int // number of leading coefficient columns, needed to tell a zero row from a useful one
}

func newDecoderMatrix(pieceCount, pieceByteLen int) *decoderMatrix {
	cols := pieceCount + pieceByteLen
	return &decoderMatrix{
		elements:   make([]byte, 0, pieceCount*cols),
		cols:       cols,
		pieceCount: pieceCount,
	}
}

func (m *decoderMatrix) at(r, c int) byte { return m.elements[r*m.cols+c] }
func (m *decoderMatrix) set(r, c int, v byte) { m.elements[r*m.cols+c] = v }
func (m *decoderMatrix) row(r int) []byte { return m.elements[r*m.cols : (r+1)*m.cols] }

// addRow appends a full coded piece as a new row. It fails with
// ErrInvalidPieceLength if len(row) != m.cols.
func (m *decoderMatrix) addRow(row []byte) error {
	if len(row) != m.cols {
		return ErrInvalidPieceLength
	}
	m.elements = append(m.elements, row...)
	m.rows++
	return nil
}

// swapRows exchanges two distinct rows in place without an extra buffer.
func (m *decoderMatrix) swapRows(a, b int) {
	ra := m.row(a)
	rb := m.row(b)
	for i := range ra {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

// rref reduces the matrix to reduced row echelon form and compacts away
// zero rows, leaving rows == rank.
func (m *decoderMatrix) rref() {
	m.cleanForward()
	m.cleanBackward()
	m.removeZeroRows()
}

// rank returns the current row count, valid as the matrix rank once rref
// has run.
func (m *decoderMatrix) rank() int { return m.rows }

// extractData consumes the matrix, returning its backing buffer: m.rows
// rows of m.cols bytes each.
func (m *decoderMatrix) extractData() []byte { return m.elements }

// cleanForward performs forward Gaussian elimination (to row echelon form):
// for each pivot column i, find a nonzero pivot (swapping it into place if
// needed) and eliminate column i from every row below it.
func (m *decoderMatrix) cleanForward() {
	boundary := m.rows
	if m.cols < boundary {
		boundary = m.cols
	}

	for i := 0; i < boundary; i++ {
		if m.at(i, i) == 0 {
			pivot := -1
			for j := i + 1; j < m.rows; j++ {
				if m.at(j, i) != 0 {
					pivot = j
					break
				}
			}
			if pivot == -1 {
				continue
			}
			m.swapRows(i, pivot)
		}

		pivotVal := m.at(i, i)
		pivotRow := m.row(i)
		for j := i + 1; j < m.rows; j++ {
			jv := m.at(j, i)
			if jv == 0 {
				continue
			}
			q, _ := gfDiv(jv, pivotVal)
			jRow := m.row(j)
			FusedMulAdd(jRow[i:], pivotRow[i:], q)
		}
	}
}

// cleanBackward performs backward elimination (to reduced row echelon
// form): clears entries above each pivot and normalizes pivots to 1.
func (m *decoderMatrix) cleanBackward() {
	boundary := m.rows
	if m.cols < boundary {
		boundary = m.cols
	}

	for i := boundary - 1; i >= 0; i-- {
		pivotVal := m.at(i, i)
		if pivotVal == 0 {
			continue
		}

		pivotRow := m.row(i)
		for j := 0; j < i; j++ {
			jv := m.at(j, i)
			if jv == 0 {
				continue
			}
			q, _ := gfDiv(jv, pivotVal)
			jRow := m.row(j)
			FusedMulAdd(jRow[i:], pivotRow[i:], q)
		}

		if pivotVal == 1 {
			continue
		}
		inv, _ := gfInv(pivotVal)
		m.set(i, i, 1)
		MulByScalarInPlace(pivotRow[i+1:], inv)
	}
}

// removeZeroRows sweeps top-down, compacting away rows whose leading
// pieceCount columns are all zero, and updates rows to the resulting rank.
func (m *decoderMatrix) removeZeroRows() {
	i := 0
	for i < m.rows {
		if m.isNonZeroRow(i) {
			i++
			continue
		}

		start := i * m.cols
		next := (i + 1) * m.cols
		if next < len(m.elements) {
			copy(m.elements[start:], m.elements[next:])
		}
		m.rows--
	}
	m.elements = m.elements[:m.rows*m.cols]
}

func (m *decoderMatrix) isNonZeroRow(r int) bool {
	row := m.row(r)
	for _, b := range row[:m.pieceCount] {
		if b != 0 {
			return true
		}
	}
	return false
}
