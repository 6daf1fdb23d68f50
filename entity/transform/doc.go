/*
Package transform holds the record join-and-format core: the multi-way
table combiner, the field spec interpreter with its modifier registry,
the per-field regexp record filter, and the record projector.

It is made externally accessible since it's useful for developing/testing
source/writer plug-ins against the same merge and formatting semantics
the pipeline uses.
*/
package transform
