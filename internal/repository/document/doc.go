// Package document persists compiled delivery-flow documents.
//
// The FileRepository writes one JSON file per category into an output
// directory and exposes a Repository interface that the compile service
// depends on.
package document
