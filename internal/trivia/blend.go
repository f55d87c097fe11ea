package trivia

// Blend interleaves trueItems and falseItems into one sequence, preserving
// each input's relative order, and guarantees that some prefix of the result
// contains at least minTrue true-items and minFalse false-items (by
// alternating the two lists until both minima are met, then appending
// whatever remains of each). Returns the blended items alongside the
// sequential ids assigned to the true- and false-origin positions. Grounded
// on §4.5's blending paragraph and §8 property 9 (original_source's
// `Blend` trait was not present in the retrieved probability.rs revision —
// see DESIGN.md).
func Blend[T any](trueItems, falseItems []T, minTrue, minFalse int) (items []T, idsTrue, idsFalse []uint8) {
	ti, fi := 0, 0
	var id uint8
	for ti < minTrue || fi < minFalse {
		advanced := false
		if ti < minTrue && ti < len(trueItems) {
			items = append(items, trueItems[ti])
			idsTrue = append(idsTrue, id)
			id++
			ti++
			advanced = true
		}
		if fi < minFalse && fi < len(falseItems) {
			items = append(items, falseItems[fi])
			idsFalse = append(idsFalse, id)
			id++
			fi++
			advanced = true
		}
		if !advanced {
			break
		}
	}
	for ; ti < len(trueItems); ti++ {
		items = append(items, trueItems[ti])
		idsTrue = append(idsTrue, id)
		id++
	}
	for ; fi < len(falseItems); fi++ {
		items = append(items, falseItems[fi])
		idsFalse = append(idsFalse, id)
		id++
	}
	return items, idsTrue, idsFalse
}
