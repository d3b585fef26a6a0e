package session

// Segment partitions the collected event buffer into positions. A photo event
// always opens a new position, closing the previous one; a text event joins
// the currently open position. Text arriving before any photo has no position
// to join and is dropped; that is documented behavior, not an error. Pure and
// idempotent over the same buffer.
func Segment(events []CollectedEvent) []*Position {
	var positions []*Position
	var current *Position

	for _, ev := range events {
		if ev.Photo != nil {
			if current != nil {
				positions = append(positions, current)
			}
			current = &Position{Photo: *ev.Photo}
			continue
		}
		if current == nil {
			continue
		}
		current.Texts = append(current.Texts, ev.Text)
	}
	if current != nil {
		positions = append(positions, current)
	}

	return positions
}
