package attack

// MaxStars is the most stars a single attack can earn
const MaxStars = 3

// IsThreeStar determines if an attack fully destroyed its target's base.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func IsThreeStar(stars int) bool {
	return stars >= MaxStars
}

// IsFailedAttack determines if an attack earned no stars at all.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func IsFailedAttack(stars int) bool {
	return stars <= 0
}
