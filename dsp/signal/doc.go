// Package signal provides deterministic streaming test signals for stereo
// effect hosts.
package signal
