package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTransactionsWorkbook(t *testing.T) {
	f := newFixture(t)
	_, tx := settledOrder(t, f, "")
	reports := NewReportService(f.repos.Transactions)

	data, err := reports.TransactionsWorkbook(f.ctx, f.business.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, tx.ID.String(), rows[1][0])

	payments, err := book.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "Cash", payments[1][1])

	empty, err := reports.TransactionsWorkbook(f.ctx, uuid.New(), time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}

func TestTransactionsWorkbookRejectsEmptyRange(t *testing.T) {
	f := newFixture(t)
	reports := NewReportService(f.repos.Transactions)
	now := time.Now()

	_, err := reports.TransactionsWorkbook(f.ctx, f.business.ID, now, now)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
