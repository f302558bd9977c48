package models

// Money is an amount in integer paise to avoid floating-point drift.
type Money int64
