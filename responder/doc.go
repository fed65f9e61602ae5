// Package responder turns retrieved context into the text shown to users.
//
// GenerateResponse asks the retriever for context. With context, the reply
// quotes the top one or two passages and ends with a closing prompt. Without
// context, GeneralResponse picks a canned reply by keyword. Faults are
// recovered and reported as a Failure whose Response is a fixed apology.
package responder
