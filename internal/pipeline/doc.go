// Package pipeline compiles input records into one delivery-flow document per
// category.
//
// Stages run in order: scope filtering, reclassification, then per category
// merging, directive parsing with facility attachment, and assembly. Every
// stage materializes its output before the next one starts. In parallel mode
// categories are compiled concurrently, but record order within a category is
// kept end to end so output stays byte-for-byte reproducible.
package pipeline
