package buddy

// removeFirst detaches and returns the first block on the circular list
// rooted at head, or nil if the list is empty (head points to itself).
func removeFirst(head *header) *header {
	first := head.next
	if first == head {
		return nil
	}
	first.prev.next = first.next
	first.next.prev = first.prev
	first.next = nil
	first.prev = nil
	return first
}

// insertBlock inserts block as the new head of the circular list rooted
// at head: head <-> block <-> head.next.
func insertBlock(head *header, block *header) {
	block.next = head.next
	block.prev = head
	head.next.prev = block
	head.next = block
}

// unlink removes block from whatever circular list currently holds it.
func unlink(block *header) {
	block.prev.next = block.next
	block.next.prev = block.prev
	block.next = nil
	block.prev = nil
}
