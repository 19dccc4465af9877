package simplex

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// ViolationFunc computes how much a non-tree edge violates optimality:
// positive means it is eligible to enter the basis.
type ViolationFunc[F constraints.Signed] func(e *InternalEdge[F], st *SpanningTreeStructure[F]) F

// PivotRule is a stateful iterator over a SpanningTreeStructure's edge
// vector that returns the next entering (or, for the dual variant,
// leaving) arc id, or -1 once none remain eligible.
type PivotRule[F constraints.Signed] interface {
	FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int
}

// BestEligibleArc scans every edge and returns the one with maximum
// violation. O(M) per pivot; fewest pivots, most work per pivot.
type BestEligibleArc[F constraints.Signed] struct{}

func NewBestEligibleArc[F constraints.Signed](numEdges int) *BestEligibleArc[F] {
	return &BestEligibleArc[F]{}
}

func (p *BestEligibleArc[F]) FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int {
	maxiViolation := F(0)
	enteringEdgeID := -1
	for edgeID := range st.edges {
		v := violation(&st.edges[edgeID], st)
		if v > maxiViolation {
			maxiViolation = v
			enteringEdgeID = edgeID
		}
	}
	return enteringEdgeID
}

// FirstEligibleArc resumes scanning from its last position and returns
// the first edge with positive violation. O(1) amortised; many pivots.
type FirstEligibleArc[F constraints.Signed] struct {
	currentEdgeID int
}

func NewFirstEligibleArc[F constraints.Signed](numEdges int) *FirstEligibleArc[F] {
	return &FirstEligibleArc[F]{}
}

func (p *FirstEligibleArc[F]) FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int {
	for i := 0; i < st.numEdges; i++ {
		v := violation(&st.edges[p.currentEdgeID], st)
		if v > 0 {
			return p.currentEdgeID
		}
		p.currentEdgeID++
		if p.currentEdgeID == st.numEdges {
			p.currentEdgeID = 0
		}
	}
	return -1
}

// BlockSearch scans in fixed-size blocks, returning the best violator
// found in the first block that has one; a compromise between Best and
// First.
type BlockSearch[F constraints.Signed] struct {
	currentEdgeID int
	blockSize     int
}

// NewBlockSearchWithParameter matches the original's
// new_with_parameter(min_block_size, block_size_factor).
func NewBlockSearchWithParameter[F constraints.Signed](numEdges, minBlockSize int, blockSizeFactor float64) *BlockSearch[F] {
	if minBlockSize <= 0 {
		panic("simplex: min block size must be positive")
	}
	if blockSizeFactor < 0 {
		panic("simplex: block size factor must be non-negative")
	}
	block := int(blockSizeFactor * math.Sqrt(float64(numEdges)))
	if block < minBlockSize {
		block = minBlockSize
	}
	return &BlockSearch[F]{blockSize: block}
}

// NewBlockSearch uses the defaults min_block_size=10, factor=1.0.
func NewBlockSearch[F constraints.Signed](numEdges int) *BlockSearch[F] {
	return NewBlockSearchWithParameter[F](numEdges, 10, 1.0)
}

func (p *BlockSearch[F]) FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int {
	maxiViolation := F(0)
	enteringEdgeID := -1
	count := p.blockSize

	for i := 0; i < st.numEdges; i++ {
		v := violation(&st.edges[p.currentEdgeID], st)
		if v > maxiViolation {
			maxiViolation = v
			enteringEdgeID = p.currentEdgeID
		}

		count--
		if count == 0 {
			if enteringEdgeID != -1 {
				return enteringEdgeID
			}
			count = p.blockSize
		}

		p.currentEdgeID++
		if p.currentEdgeID == st.numEdges {
			p.currentEdgeID = 0
		}
	}
	return enteringEdgeID
}

// CandidateList maintains a short list of up to candidateListSize
// eligible arcs: "minor" iterations rescan just the list and drop
// ineligible entries; after minorLimit minors the list is rebuilt by
// scanning forward from the cursor.
type CandidateList[F constraints.Signed] struct {
	currentEdgeID     int
	candidates        []int
	candidateListSize int
	minorCountLimit   int
	minorCount        int
	currentSize       int
}

func NewCandidateListWithParameter[F constraints.Signed](numEdges, minCandidateListSize int, candidateListSizeFactor float64, minMinorLimit int, minorLimitFactor float64) *CandidateList[F] {
	if minCandidateListSize <= 0 || candidateListSizeFactor <= 0 || minMinorLimit <= 0 || minorLimitFactor < 0 {
		panic("simplex: invalid candidate list parameters")
	}
	size := int(candidateListSizeFactor * math.Sqrt(float64(numEdges)))
	if size < minCandidateListSize {
		size = minCandidateListSize
	}
	minorLimit := int(minorLimitFactor * float64(size))
	if minorLimit < minMinorLimit {
		minorLimit = minMinorLimit
	}

	candidates := make([]int, size)
	for i := range candidates {
		candidates[i] = -1
	}
	return &CandidateList[F]{candidates: candidates, candidateListSize: size, minorCountLimit: minorLimit}
}

// NewCandidateList uses the defaults L>=10 (factor 0.25), minor_limit =
// max(3, 0.1*L).
func NewCandidateList[F constraints.Signed](numEdges int) *CandidateList[F] {
	return NewCandidateListWithParameter[F](numEdges, 10, 0.25, 3, 0.1)
}

func (p *CandidateList[F]) FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int {
	maxiViolation := F(0)
	enteringEdgeID := -1

	if p.currentSize > 0 && p.minorCount < p.minorCountLimit {
		p.minorCount++

		i := 0
		for i < p.currentSize {
			edgeID := p.candidates[i]
			v := violation(&st.edges[edgeID], st)
			if v <= 0 {
				p.currentSize--
				p.candidates[i] = p.candidates[p.currentSize]
			} else {
				if v > maxiViolation {
					maxiViolation = v
					enteringEdgeID = edgeID
				}
				i++
			}
		}

		if enteringEdgeID != -1 {
			return enteringEdgeID
		}
	}

	p.currentSize = 0
	for i := 0; i < st.numEdges; i++ {
		v := violation(&st.edges[p.currentEdgeID], st)

		if v > 0 {
			p.candidates[p.currentSize] = p.currentEdgeID
			p.currentSize++

			if v > maxiViolation {
				maxiViolation = v
				enteringEdgeID = p.currentEdgeID
			}
		}

		if p.currentSize == p.candidateListSize {
			break
		}

		p.currentEdgeID++
		if p.currentEdgeID == st.numEdges {
			p.currentEdgeID = 0
		}
	}

	p.minorCount = 1
	return enteringEdgeID
}

type altCandidate[F constraints.Signed] struct {
	edgeID    int
	violation F
}

// AlteringCandidateList is like BlockSearch but accumulates an
// eligibility-sorted "head" of top-K arcs each scan, returning the best
// and retaining the next best for subsequent pivots.
type AlteringCandidateList[F constraints.Signed] struct {
	currentEdgeID int
	blockSize     int
	headLength    int
	candidates    []altCandidate[F]
	currentSize   int
}

func NewAlteringCandidateListWithParameter[F constraints.Signed](numEdges, minBlockSize int, blockSizeFactor float64, minHeadLength int, headLengthFactor float64) *AlteringCandidateList[F] {
	if minBlockSize <= 0 || blockSizeFactor <= 0 || minHeadLength <= 0 || headLengthFactor < 0 {
		panic("simplex: invalid altering candidate list parameters")
	}
	block := int(blockSizeFactor * math.Sqrt(float64(numEdges)))
	if block < minBlockSize {
		block = minBlockSize
	}
	head := int(headLengthFactor * float64(block))
	if head < minHeadLength {
		head = minHeadLength
	}
	return &AlteringCandidateList[F]{blockSize: block, headLength: head, candidates: make([]altCandidate[F], head+block)}
}

// NewAlteringCandidateList uses the defaults block ~= sqrt(M) (factor
// 1.0, min 10), head = max(3, 0.01*block).
func NewAlteringCandidateList[F constraints.Signed](numEdges int) *AlteringCandidateList[F] {
	return NewAlteringCandidateListWithParameter[F](numEdges, 10, 1.0, 3, 0.01)
}

func (p *AlteringCandidateList[F]) FindEnteringEdge(st *SpanningTreeStructure[F], violation ViolationFunc[F]) int {
	i := 0
	for i < p.currentSize {
		edgeID := p.candidates[i].edgeID
		v := violation(&st.edges[edgeID], st)
		if v <= 0 {
			p.currentSize--
			p.candidates[i] = p.candidates[p.currentSize]
		} else {
			p.candidates[i].violation = v
			i++
		}
	}

	blockCount := p.blockSize
	limit := p.headLength

	for i := 0; i < st.numEdges; i++ {
		v := violation(&st.edges[p.currentEdgeID], st)

		if v > 0 {
			p.candidates[p.currentSize] = altCandidate[F]{edgeID: p.currentEdgeID, violation: v}
			p.currentSize++
		}
		blockCount--

		if blockCount == 0 {
			if p.currentSize > limit {
				break
			}
			limit = 0
			blockCount = p.blockSize
		}

		p.currentEdgeID++
		if p.currentEdgeID == st.numEdges {
			p.currentEdgeID = 0
		}
	}

	if p.currentSize == 0 {
		return -1
	}

	newLength := p.currentSize
	if p.headLength+1 < newLength {
		newLength = p.headLength + 1
	}
	candidates := p.candidates[:p.currentSize]
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].violation > candidates[j].violation })

	enteringEdgeID := p.candidates[0].edgeID
	p.candidates[0] = p.candidates[newLength-1]
	p.currentSize = newLength - 1

	return enteringEdgeID
}
