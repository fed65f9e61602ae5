// Package batch answers lists of queries concurrently.
//
// A Runner fans queries out over an ants worker pool and collects the results
// in input order. It is meant for evaluating a knowledge base against a file of
// sample questions; the responder it drives is read-only, so workers share it
// without locking.
package batch
