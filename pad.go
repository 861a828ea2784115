// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waitq

// pad is cache-line padding to prevent false sharing between adjacent
// counters. Every contended atomic field in this package is preceded by one
// so two hot counters never land on the same cache line.
type pad [64]byte

// roundToPow2 rounds n up to the next power of 2. Capacities below 2 are
// rejected by the constructors before this is called.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
