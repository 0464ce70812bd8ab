// Package domain defines the core business entities of the review system:
// captured items under spaced repetition and the process-wide settings record.
package domain
