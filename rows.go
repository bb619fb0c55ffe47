package vestaboard

import (
	"context"
	"strings"
)

// RowsRequest posts rows that are already encoded as codes. Rows are checked,
// never re-wrapped: each must hold exactly 22 integers.
type RowsRequest struct {
	// Rows are the encoded rows. Any number of rows is accepted; more than 6 are cut.
	Rows [][]int
	// RowsJSON allows providing the rows as a JSON array of arrays; decoded internally.
	RowsJSON []byte
	// RowsPath allows providing a path to a JSON rows file; read and decoded internally.
	RowsPath string
	// Pad places fewer than 6 rows. PadNone centers and logs a warning.
	Pad VerticalAlignment
	// OnWarning receives truncation and default-centering advisories. Optional.
	OnWarning WarningHandler
}

// resolve picks the rows source. Precedence: Rows > RowsJSON > RowsPath.
func (r RowsRequest) resolve() ([][]int, error) {
	switch {
	case r.Rows != nil:
		return r.Rows, nil
	case len(r.RowsJSON) > 0:
		return ParseRows(r.RowsJSON)
	case strings.TrimSpace(r.RowsPath) != "":
		data, err := readFile(strings.TrimSpace(r.RowsPath))
		if err != nil {
			return nil, err
		}
		return ParseRows(data)
	}
	return nil, ErrRowsMissing
}

// Format checks and pads the rows without sending them.
func (r RowsRequest) Format() (Grid, error) {
	rows, err := r.resolve()
	if err != nil {
		return Grid{}, err
	}
	return FormatRows(rows, r.Pad, WithWarningHandler(r.OnWarning))
}

// PostRows checks, pads and posts pre-encoded rows.
func (c *Client) PostRows(ctx context.Context, payload RowsRequest) (*APIResponse, error) {
	rows, err := payload.resolve()
	if err != nil {
		return nil, err
	}
	grid, err := FormatRows(rows, payload.Pad, WithWarningHandler(c.warningHandler(payload.OnWarning)))
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, grid)
}

// PostRowsJSON is a convenience that accepts the rows as JSON bytes.
func (c *Client) PostRowsJSON(ctx context.Context, data []byte, meta RowsRequest) (*APIResponse, error) {
	meta.Rows = nil
	meta.RowsJSON = data
	return c.PostRows(ctx, meta)
}

// PostRowsFile is a convenience that reads the rows from a JSON file.
func (c *Client) PostRowsFile(ctx context.Context, path string, meta RowsRequest) (*APIResponse, error) {
	meta.Rows = nil
	meta.RowsJSON = nil
	meta.RowsPath = path
	return c.PostRows(ctx, meta)
}
