// Package message owns the bounded formatting pipeline: a reusable
// fixed-capacity buffer, plain and located rendering with guaranteed
// truncation, and call-site capture for located emission.
package message
