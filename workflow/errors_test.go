package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(errNotFound("missing")))
	assert.Equal(t, KindConflict, KindOf(errConflict("taken")))
	assert.Equal(t, KindValidation, KindOf(errValidation("bad input")))
	assert.Equal(t, KindForbidden, KindOf(errForbidden("nope")))
	assert.Equal(t, KindInternal, KindOf(errInternal("db", errors.New("boom"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := errInternal("query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWrapTxnErrKeepsTaxonomy(t *testing.T) {
	conflict := errConflict("asset unavailable")
	assert.Equal(t, conflict, wrapTxnErr(conflict, "txn failed"))

	wrapped := wrapTxnErr(errors.New("session lost"), "txn failed")
	assert.Equal(t, KindInternal, KindOf(wrapped))

	assert.NoError(t, wrapTxnErr(nil, "txn failed"))
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(2, 500)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestParseID(t *testing.T) {
	_, err := parseID("not-hex")
	assert.Equal(t, KindValidation, KindOf(err))

	oid, err := parseID("64f000000000000000000001")
	assert.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", oid.Hex())
}
