package vestaboard

import "context"

// TextRequest is free text to lay out and post.
//
// Board Layout:
// The board shows 6 rows of 22 flaps. Text is split on line breaks, each line is
// word-wrapped to 22 columns, and the result is cut or padded to 6 rows:
//   - Align places each row horizontally (left by default)
//   - Pad places the rows vertically; PadNone centers and logs a warning
//   - Strictness decides whether unsupported characters fail the request or become blanks
type TextRequest struct {
	// Text is the content to show. Empty text posts a blank board.
	Text string
	// Align places rows shorter than 22 columns. Optional, defaults to AlignLeft.
	Align HorizontalAlignment
	// Pad places content shorter than 6 rows. Optional, defaults to PadNone.
	Pad VerticalAlignment
	// Strictness selects reject or blank-substitute for unsupported characters. Optional, defaults to Lenient.
	Strictness Strictness
	// OnWarning receives truncation and default-centering advisories in addition to the client log. Optional.
	OnWarning WarningHandler
}

// Format lays out the request without sending it.
func (r TextRequest) Format() (Grid, error) {
	return FormatText(r.Text, r.options(r.OnWarning)...)
}

func (r TextRequest) options(h WarningHandler) []FormatOption {
	return []FormatOption{
		WithAlign(r.Align),
		WithPad(r.Pad),
		WithStrictness(r.Strictness),
		WithWarningHandler(h),
	}
}

// PostText formats the request and posts the resulting grid.
func (c *Client) PostText(ctx context.Context, payload TextRequest) (*APIResponse, error) {
	grid, err := FormatText(payload.Text, payload.options(c.warningHandler(payload.OnWarning))...)
	if err != nil {
		return nil, err
	}
	return c.Send(ctx, grid)
}

// PostTextSimple is a convenience helper using Background context and centering
// in both directions.
func (c *Client) PostTextSimple(text string) (*APIResponse, error) {
	return c.PostText(context.Background(), TextRequest{
		Text:  text,
		Align: AlignCenter,
		Pad:   PadCenter,
	})
}
