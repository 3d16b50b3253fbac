package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	valid := []TransactionType{
		TypeNormal, TypeAllocationOut, TypeAllocationIn,
		TypeReturnOut, TypeReturnIn, TypeCoverOut, TypeCoverIn,
	}
	for _, typ := range valid {
		assert.True(t, typ.Valid(), "%s should be valid", typ)
	}

	assert.False(t, TransactionType("").Valid())
	assert.False(t, TransactionType("transfer").Valid())
}

func TestTransactionTypeIsTransfer(t *testing.T) {
	assert.False(t, TypeNormal.IsTransfer())
	assert.False(t, TransactionType("bogus").IsTransfer())

	for _, typ := range []TransactionType{
		TypeAllocationOut, TypeAllocationIn,
		TypeReturnOut, TypeReturnIn, TypeCoverOut, TypeCoverIn,
	} {
		assert.True(t, typ.IsTransfer(), "%s is a transfer leg", typ)
	}
}

func TestBoardHasParent(t *testing.T) {
	child := Board{ID: "c", ParentID: "p"}
	assert.True(t, child.HasParent())

	top := Board{ID: "t"}
	assert.False(t, top.HasParent())
}
