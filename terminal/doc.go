// Package terminal holds the terminal capability helpers the renderer needs
// around tcell: color mode detection, 256-color quantization and crash-time
// restoration of a raw-mode terminal.
package terminal
