// Package scan runs spectrum analysis and tone detection over whole
// recordings: PCM WAV input and output, hop-sized framing and a bounded
// worker pool that keeps results in frame order.
package scan
