// Package progress draws a single-line terminal progress bar with an
// elapsed/remaining time estimate.
//
// The package includes:
//
//   - Bar, the orchestrator driven by Start, Update and Finish
//   - Config and DefaultConfig, optionally loaded from YAML with LoadConfig
//   - Reporter, an observer interface receiving a Snapshot per drawn frame
//
// # Basic Usage
//
//	bar := progress.New(0, int64(n), progress.DefaultConfig())
//	bar.Start()
//	for i := 0; i <= n; i++ {
//	    work(i)
//	    bar.Update(int64(i))
//	}
//	bar.Finish()
//
// Update is cheap enough to call on every iteration of a hot loop. Samples
// that arrive sooner than Config.MinRefreshInterval after the last drawn
// frame are dropped without allocating or touching the output; Start, the
// first Update and Finish always draw.
//
// # Output
//
// On terminals that handle UTF-8 and ANSI escapes the bar is drawn with
// box-drawing glyphs, colors and a spinner, and the cursor is hidden while
// the bar is live:
//
//	⠹ Processing ━━━━━━━━━━━━━━━━━━━━╺━━━━━━━━━━━━━━━━━━━  50% [00:00:05 < 00:00:04]
//
// Everywhere else the bar falls back to plain ASCII without escapes:
//
//	Processing [====================                    ]  50% [00:00:05 < 00:00:04]
//
// # Thread Safety
//
// A Bar must be driven from one goroutine. Distinct bars share no state.
package progress
