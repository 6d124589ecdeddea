package score

var grades = []struct {
	min   int
	grade string
}{
	{95, "S"},
	{90, "A+"},
	{85, "A"},
	{80, "B+"},
	{75, "B"},
	{70, "C+"},
	{65, "C"},
	{60, "D+"},
	{55, "D"},
}

// Grade maps a final accuracy to a letter.
func Grade(accuracy int) string {
	for _, g := range grades {
		if accuracy >= g.min {
			return g.grade
		}
	}
	return "F"
}
