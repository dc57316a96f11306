package xlsxexport

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docuparse/internal/domain"
)

func TestWrite(t *testing.T) {
	result, err := json.Marshal(domain.DocumentResult{
		DocType: domain.DocTypePurchaseOrder,
		Fields: domain.FieldSet{
			domain.FieldPONumber: "PO-2024-0042",
			domain.FieldTotal:    3500.00,
		},
	})
	require.NoError(t, err)

	docs := []domain.Document{{
		ID:            uuid.New(),
		FileID:        uuid.New(),
		DocType:       domain.DocTypePurchaseOrder,
		PageCount:     1,
		Result:        result,
		Validation:    json.RawMessage("{}"),
		ParsingStatus: domain.ParsingStatusCompleted,
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, docs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Document ID", header)

	number, err := f.GetCellValue(sheetName, "G2")
	require.NoError(t, err)
	assert.Equal(t, "PO-2024-0042", number)

	amount, err := f.GetCellValue(sheetName, "J2")
	require.NoError(t, err)
	assert.Equal(t, "3500.00", amount)
}
