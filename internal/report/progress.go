package report

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/poolmap/pool"
)

// NewProgressBar returns a bar sized for total items, writing to w.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// ProgressHook advances bar by one for every completed item. Pass the
// result to pool.WithCompletionHook.
func ProgressHook(bar *progressbar.ProgressBar) func(pool.CompletionEvent) {
	return func(pool.CompletionEvent) {
		_ = bar.Add(1)
	}
}
