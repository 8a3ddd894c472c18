package hir

// blockInner is the shared, mutable instruction slice a Block owns a
// pointer to. Keeping it behind a pointer indirection (rather than
// storing []Instruction directly on Block) is what lets the simplifier
// and the drop checker hold a *Block across a pass while instructions are
// appended, truncated, or replaced in place (spec.md design note "Shared
// mutable graphs": confine interior mutability to one handle per
// concern — here, one blockInner per block — rather than ref-counting the
// whole body).
type blockInner struct {
	instrs []Instruction
}

// Block is one basic block: an ordered list of instructions ending (save
// for the last block of a diverging function) in a control-transfer
// instruction (Jump/Return/*Switch).
type Block struct {
	ID    BlockId
	inner *blockInner
}

// NewBlock returns an empty block with the given id.
func NewBlock(id BlockId) *Block {
	return &Block{ID: id, inner: &blockInner{}}
}

// Instructions returns the block's instructions in order. The returned
// slice must not be mutated by the caller; use Append/Truncate/Replace.
func (b *Block) Instructions() []Instruction { return b.inner.instrs }

// Append adds instr to the end of the block.
func (b *Block) Append(instr Instruction) { b.inner.instrs = append(b.inner.instrs, instr) }

// Truncate drops every instruction from index n onward.
func (b *Block) Truncate(n int) { b.inner.instrs = b.inner.instrs[:n] }

// SetInstructions replaces the block's instructions wholesale, used by
// passes (JumpSimplifier, BlockMerger) that rebuild a block's body.
func (b *Block) SetInstructions(instrs []Instruction) { b.inner.instrs = instrs }

// Body is a function's control-flow graph: an insertion-ordered map from
// BlockId to *Block, entry always at BlockId(0) (spec.md §6 "BlockId 0 as
// entry").
type Body struct {
	order []BlockId
	byID  map[BlockId]*Block
}

// NewBody returns an empty body.
func NewBody() *Body {
	return &Body{byID: make(map[BlockId]*Block)}
}

// AddBlock inserts blk, appending to the insertion order; it is a
// programmer error to add the same BlockId twice.
func (b *Body) AddBlock(blk *Block) {
	if _, exists := b.byID[blk.ID]; exists {
		panic("hir: duplicate block id " + blk.ID.String())
	}
	b.order = append(b.order, blk.ID)
	b.byID[blk.ID] = blk
}

// Block returns the block with the given id, or nil if absent.
func (b *Body) Block(id BlockId) *Block { return b.byID[id] }

// Blocks returns every block in insertion order.
func (b *Body) Blocks() []*Block {
	out := make([]*Block, len(b.order))
	for i, id := range b.order {
		out[i] = b.byID[id]
	}
	return out
}

// RemoveBlock deletes id from the body, preserving the relative order of
// the remaining blocks.
func (b *Body) RemoveBlock(id BlockId) {
	if _, exists := b.byID[id]; !exists {
		return
	}
	delete(b.byID, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Entry returns the function's entry block, BlockId(0).
func (b *Body) Entry() *Block { return b.byID[BlockId(0)] }

// Successors returns the block ids that id's terminating instruction can
// transfer control to, in a deterministic order; empty for a Return or a
// block with no terminator yet.
func (b *Body) Successors(id BlockId) []BlockId {
	blk := b.byID[id]
	if blk == nil || len(blk.Instructions()) == 0 {
		return nil
	}
	last := blk.Instructions()[len(blk.Instructions())-1]
	switch t := last.(type) {
	case *Jump:
		return []BlockId{t.Target}
	case *EnumSwitch:
		out := make([]BlockId, len(t.Cases))
		for i, c := range t.Cases {
			out[i] = c.Branch
		}
		return out
	case *IntegerSwitch:
		out := make([]BlockId, 0, len(t.Cases)+1)
		for _, c := range t.Cases {
			out = append(out, c.Branch)
		}
		out = append(out, t.Default)
		return out
	case *StringSwitch:
		out := make([]BlockId, 0, len(t.Cases)+1)
		for _, c := range t.Cases {
			out = append(out, c.Branch)
		}
		out = append(out, t.Default)
		return out
	case *With:
		return []BlockId{t.Info.BlockId}
	default:
		return nil
	}
}
