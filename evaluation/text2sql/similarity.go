// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package text2sql

// Ratio measures the similarity of two sequences as 2*M/(len(a)+len(b)),
// where M is the total size of the longest matching blocks found by
// recursive longest-common-substring decomposition. It returns 1.0 for two
// empty sequences.
func Ratio(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	m := matchingElements(a, b, 0, len(a), 0, len(b))
	return 2.0 * float64(m) / float64(len(a)+len(b))
}

// matchingElements sums the sizes of matching blocks within the given
// index windows of a and b.
func matchingElements(a, b []string, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingElements(a, b, alo, i, blo, j)
	total += matchingElements(a, b, i+size, ahi, j+size, bhi)
	return total
}

// longestMatch finds the longest block of equal elements within the given
// windows, preferring the earliest position on ties.
func longestMatch(a, b []string, alo, ahi, blo, bhi int) (besti, bestj, bestSize int) {
	besti, bestj = alo, blo

	// b2j maps each element of the b window to its positions.
	b2j := make(map[string][]int)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	// runLen[j] is the length of the matching run ending at (i-1, j-1).
	runLen := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newRunLen := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := runLen[j-1] + 1
			newRunLen[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		runLen = newRunLen
	}
	return besti, bestj, bestSize
}
