package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/okorolev/shopmaint/internal/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Pager_AdvancesCursorToHighestID(t *testing.T) {
	// given
	pages := [][]shopify.Product{
		{{ID: 1}, {ID: 3}},
		{{ID: 5}, {ID: 7}},
		{},
	}
	var requestedCursors []int64
	call := 0
	pg := &pager{fetch: func(_ context.Context, sinceID int64) ([]shopify.Product, error) {
		requestedCursors = append(requestedCursors, sinceID)
		page := pages[call]
		call++
		return page, nil
	}}

	// when
	var seen []int64
	for {
		page, err := pg.next(context.Background())
		require.NoError(t, err)
		if page == nil {
			break
		}
		for _, p := range page {
			seen = append(seen, p.ID)
		}
	}

	// then
	assert.Equal(t, []int64{0, 3, 7}, requestedCursors)
	assert.Equal(t, []int64{1, 3, 5, 7}, seen)
}

func Test_Pager_ExhaustedAfterEmptyPage(t *testing.T) {
	calls := 0
	pg := &pager{fetch: func(_ context.Context, _ int64) ([]shopify.Product, error) {
		calls++
		return nil, nil
	}}

	page, err := pg.next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)

	// further calls never hit the fetch func again
	page, err = pg.next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, 1, calls)
}

func Test_Pager_PropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("remote unavailable")
	pg := &pager{fetch: func(_ context.Context, _ int64) ([]shopify.Product, error) {
		return nil, fetchErr
	}}

	_, err := pg.next(context.Background())
	assert.ErrorIs(t, err, fetchErr)
}
