package utilities

func Conditional(condition bool, t string, f string) string {
	if condition {
		return t
	}
	return f
}

// Iota generates the integers in [begin, end).
func Iota(begin int, end int) (result []int) {
	if end <= begin {
		return []int{}
	}
	result = make([]int, end-begin)
	for i := range result {
		result[i] = begin + i
	}
	return
}

func Filter[T any](elements []T, filterer func(T) bool) []T {
	result := make([]T, 0, len(elements))
	for _, element := range elements {
		if filterer(element) {
			result = append(result, element)
		}
	}
	return result
}

func Fmap[T any, U any](elements []T, mapper func(T) U) []U {
	result := make([]U, len(elements))
	for index, element := range elements {
		result[index] = mapper(element)
	}
	return result
}

// Uniques keeps the first occurrence of every distinct element and
// preserves the order in which those first occurrences appear.
func Uniques[T comparable](elements []T) []T {
	seen := make(map[T]struct{}, len(elements))
	result := make([]T, 0, len(elements))
	for _, element := range elements {
		if _, ok := seen[element]; ok {
			continue
		}
		seen[element] = struct{}{}
		result = append(result, element)
	}
	return result
}
