// Package stft implements a streaming short-time Fourier analysis/synthesis
// engine for real-time block processing.
//
// The [Engine] accumulates incoming samples per channel, and every hop it
// windows the most recent frame, hands the frames to a [FrameProcessor], then
// applies the synthesis window and overlap-adds the result into the output
// stream. Analysis and synthesis use the same window shape; the synthesis
// window is divided by the window's overlap gain so that an untouched frame
// reconstructs the input exactly.
//
// Output is delayed by [Engine.Latency] samples for any host block length.
// Process works in place and does not allocate.
package stft
