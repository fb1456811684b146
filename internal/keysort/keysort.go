// Package keysort sorts and deduplicates slices of 64-bit keys in place
// without allocating.
package keysort

import "math/bits"

// Key is any type whose underlying type is uint64.
type Key interface {
	~uint64
}

// insertionCutoff is the largest high index sorted by insertion sort.
const insertionCutoff = 24

// Sort orders s ascending using introsort: median-of-three quicksort that
// falls back to heapsort once recursion gets too deep, and to insertion sort
// for short ranges.
func Sort[T Key](s []T) {
	if len(s) < 2 {
		return
	}
	maxDepth := 2 * (bits.Len(uint(len(s))) - 1)
	introsort(s, 0, maxDepth)
}

func introsort[T Key](s []T, depth, maxDepth int) {
	for len(s) > 1 {
		high := len(s) - 1
		if high <= insertionCutoff {
			insertionSort(s)
			return
		}
		if depth > maxDepth {
			heapSort(s)
			return
		}
		p := partition(s)
		depth++
		// recurse into the smaller side, loop on the larger
		if p < high/2 {
			introsort(s[:p], depth, maxDepth)
			s = s[p+1:]
		} else {
			introsort(s[p+1:], depth, maxDepth)
			s = s[:p]
		}
	}
}

// partition moves the median of the first, middle and last keys to the
// front, partitions around it and returns its final index.
func partition[T Key](s []T) int {
	high := len(s) - 1
	mid := high / 2
	a, b, c := s[0], s[mid], s[high]
	switch {
	case (b > a) != (b > c):
		s[0], s[mid] = b, a
	case (c > a) != (c > b):
		s[0], s[high] = c, a
	}
	pivot := s[0]

	i, j := 1, high
	for {
		for i <= high && s[i] < pivot {
			i++
		}
		for s[j] > pivot {
			j--
		}
		if i >= j {
			break
		}
		s[i], s[j] = s[j], s[i]
		i++
		j--
	}
	s[0], s[j] = s[j], pivot
	return j
}

func insertionSort[T Key](s []T) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && key < s[j] {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
}

func heapSort[T Key](s []T) {
	n := len(s)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(s, n, i)
	}
	for i := n - 1; i > 0; i-- {
		s[0], s[i] = s[i], s[0]
		siftDown(s, i, 0)
	}
}

func siftDown[T Key](s []T, n, i int) {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < n && s[l] > s[largest] {
			largest = l
		}
		if r < n && s[r] > s[largest] {
			largest = r
		}
		if largest == i {
			return
		}
		s[i], s[largest] = s[largest], s[i]
		i = largest
	}
}

// Dedup compacts adjacent equal keys in place, keeping the first of each run,
// and returns the number of keys kept. On sorted input the prefix s[:n] is
// strictly ascending.
func Dedup[T Key](s []T) int {
	if len(s) < 2 {
		return len(s)
	}
	w := 1
	for r := 1; r < len(s); r++ {
		if s[r] != s[w-1] {
			s[w] = s[r]
			w++
		}
	}
	return w
}

// Unique sorts s, removes duplicates and returns the shortened slice, which
// shares s's backing array.
func Unique[T Key](s []T) []T {
	Sort(s)
	return s[:Dedup(s)]
}

// IsSorted reports whether s is in ascending order.
func IsSorted[T Key](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
