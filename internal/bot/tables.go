package bot

// Tables holds the five basic strategy decision tables. Columns are the
// dealer up-card value minus one (ace first). Split rows are the pair card
// value minus one; the other tables are indexed by the hand total.
type Tables struct {
	Split      [10][10]bool
	SoftDouble [22][10]bool
	SoftStand  [22][10]bool
	HardDouble [22][10]bool
	HardStand  [22][10]bool
}

// against marks the given dealer up-cards, 1 for an ace through 10.
func against(upCards ...int) [10]bool {
	var row [10]bool
	for _, u := range upCards {
		row[u-1] = true
	}
	return row
}

func span(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for u := from; u <= to; u++ {
		out = append(out, u)
	}
	return out
}

var everything = against(span(1, 10)...)

// darwin follows "Darwin Ortiz on Casino Gambling" (1986), pp. 63-64.
var darwin = func() Tables {
	var t Tables

	t.Split[0] = everything
	t.Split[1] = against(span(2, 7)...)
	t.Split[2] = against(span(2, 7)...)
	t.Split[3] = against(5, 6)
	t.Split[5] = against(span(2, 7)...)
	t.Split[6] = against(span(2, 7)...)
	t.Split[7] = everything
	t.Split[8] = against(2, 3, 4, 5, 6, 8, 9)

	t.SoftDouble[9] = against(span(3, 6)...)
	t.SoftDouble[10] = against(span(2, 9)...)
	t.SoftDouble[11] = against(span(2, 10)...)
	t.SoftDouble[13] = against(5, 6)
	t.SoftDouble[14] = against(5, 6)
	t.SoftDouble[15] = against(4, 5, 6)
	t.SoftDouble[16] = against(4, 5, 6)
	t.SoftDouble[17] = against(span(3, 6)...)
	t.SoftDouble[18] = against(span(3, 6)...)

	t.SoftStand[19] = against(2, 7, 8)
	t.SoftStand[20] = everything
	t.SoftStand[21] = everything

	t.HardDouble[9] = against(span(3, 6)...)
	t.HardDouble[10] = against(span(2, 9)...)
	t.HardDouble[11] = against(span(2, 10)...)

	t.HardStand[12] = against(4, 5, 6)
	for total := 13; total <= 16; total++ {
		t.HardStand[total] = against(span(2, 6)...)
	}
	for total := 17; total <= 21; total++ {
		t.HardStand[total] = everything
	}
	return t
}()

// DarwinTables returns a copy of the Darwin Ortiz tables.
func DarwinTables() *Tables {
	t := darwin
	return &t
}

// WikiTables returns the common published basic strategy, which only
// differs from Darwin Ortiz by not splitting sixes against a seven.
func WikiTables() *Tables {
	t := darwin
	t.Split[5] = against(span(2, 6)...)
	return &t
}
