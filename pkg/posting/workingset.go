package posting

// PriorityTuple is the per-term (tf, norm) contribution to one
// posting in the working set. A zero value is the sentinel recorded
// for a query term that did not match a given document.
type PriorityTuple struct {
	TFTitle     uint8
	TFContent   uint8
	NormTitle   uint8
	NormContent uint8
}

// WorkingPosting is one surviving document in the merged working
// set: its id plus one PriorityTuple per query term merged so far, in
// merge order.
type WorkingPosting struct {
	DocID      uint32
	Priorities []PriorityTuple
}

// WorkingSet is the in-memory accumulated result of a query, always
// kept sorted ascending by DocID.
type WorkingSet []WorkingPosting

// intersectionTippingRatio is T from the spec: below this size ratio,
// a galloping binary search beats a linear stitch.
const intersectionTippingRatio = 50

// Union merges l into w. Every survivor keeps its prior
// term-priority entries and gains one more: the real tuple if its
// document is in l, a sentinel zero tuple otherwise. Documents present
// only in l enter the working set with sentinel tuples for every
// prior term and the real tuple for this one. The result is sorted
// ascending by DocID, the natural result of stitching two sorted
// sequences.
func Union(w WorkingSet, l *Reader) (WorkingSet, error) {
	k := 0
	if len(w) > 0 {
		k = len(w[0].Priorities)
	}

	n := l.Len()
	result := make(WorkingSet, 0, len(w)+int(n))

	i, j := 0, uint32(0)
	for i < len(w) && j < n {
		lDoc, err := l.DocID(j)
		if err != nil {
			return nil, err
		}

		switch {
		case w[i].DocID < lDoc:
			result = append(result, withSentinel(w[i]))
			i++
		case w[i].DocID > lDoc:
			wp, err := withRealFromL(lDoc, k, l, j)
			if err != nil {
				return nil, err
			}
			result = append(result, wp)
			j++
		default:
			wp, err := appendReal(w[i], l, j)
			if err != nil {
				return nil, err
			}
			result = append(result, wp)
			i++
			j++
		}
	}
	for ; i < len(w); i++ {
		result = append(result, withSentinel(w[i]))
	}
	for ; j < n; j++ {
		lDoc, err := l.DocID(j)
		if err != nil {
			return nil, err
		}
		wp, err := withRealFromL(lDoc, k, l, j)
		if err != nil {
			return nil, err
		}
		result = append(result, wp)
	}

	return result, nil
}

// Intersect drops from w every document not present in l and appends
// l's real tuple to every survivor. It picks between a galloping
// binary search and a linear stitch by a size-ratio heuristic
// (galloping when len(w) < l.Len()/intersectionTippingRatio), so that
// neither strategy degrades badly on a lopsided merge.
func Intersect(w WorkingSet, l *Reader) (WorkingSet, error) {
	n := l.Len()
	if uint32(len(w)) < n/intersectionTippingRatio {
		return intersectGalloping(w, l)
	}
	return intersectStitch(w, l)
}

func intersectGalloping(w WorkingSet, l *Reader) (WorkingSet, error) {
	result := make(WorkingSet, 0, len(w))
	n := l.Len()
	min := uint32(0)

	for _, p := range w {
		max := n
		for min < max {
			mid := min + (max-min)/2
			v, err := l.DocID(mid)
			if err != nil {
				return nil, err
			}
			if v < p.DocID {
				min = mid + 1
			} else if v > p.DocID {
				max = mid
			} else {
				wp, err := appendReal(p, l, mid)
				if err != nil {
					return nil, err
				}
				result = append(result, wp)
				min = mid + 1
				break
			}
		}
		if min >= n {
			break
		}
	}

	return result, nil
}

func intersectStitch(w WorkingSet, l *Reader) (WorkingSet, error) {
	result := make(WorkingSet, 0, len(w))
	n := l.Len()
	i, j := 0, uint32(0)

	for i < len(w) && j < n {
		lDoc, err := l.DocID(j)
		if err != nil {
			return nil, err
		}
		switch {
		case w[i].DocID < lDoc:
			i++
		case w[i].DocID > lDoc:
			j++
		default:
			wp, err := appendReal(w[i], l, j)
			if err != nil {
				return nil, err
			}
			result = append(result, wp)
			i++
			j++
		}
	}

	return result, nil
}

func withSentinel(p WorkingPosting) WorkingPosting {
	pr := make([]PriorityTuple, len(p.Priorities)+1)
	copy(pr, p.Priorities)
	return WorkingPosting{DocID: p.DocID, Priorities: pr}
}

func withRealFromL(docID uint32, priorCount int, l *Reader, index uint32) (WorkingPosting, error) {
	tfTitle, tfContent, err := l.TF(index)
	if err != nil {
		return WorkingPosting{}, err
	}
	normTitle, normContent, err := l.Norm(index)
	if err != nil {
		return WorkingPosting{}, err
	}
	pr := make([]PriorityTuple, priorCount+1)
	pr[priorCount] = PriorityTuple{tfTitle, tfContent, normTitle, normContent}
	return WorkingPosting{DocID: docID, Priorities: pr}, nil
}

func appendReal(p WorkingPosting, l *Reader, index uint32) (WorkingPosting, error) {
	tfTitle, tfContent, err := l.TF(index)
	if err != nil {
		return WorkingPosting{}, err
	}
	normTitle, normContent, err := l.Norm(index)
	if err != nil {
		return WorkingPosting{}, err
	}
	pr := make([]PriorityTuple, len(p.Priorities)+1)
	copy(pr, p.Priorities)
	pr[len(p.Priorities)] = PriorityTuple{tfTitle, tfContent, normTitle, normContent}
	return WorkingPosting{DocID: p.DocID, Priorities: pr}, nil
}
