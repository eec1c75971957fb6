// Package ddb persists bit-order calibration reports in DynamoDB.
//
// Calibration is expensive (one hardware job per measured wire), so reports
// are stored versioned per backend and reused across experiment runs until
// the device is recalibrated.
package ddb
