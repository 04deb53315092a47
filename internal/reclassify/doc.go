// Package reclassify moves records between categories according to their
// compliance flag and reattaches facility context from the target category.
package reclassify
