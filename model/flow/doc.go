// Package flow contains the in-memory representation of machine learning flows:
// recursively nested descriptions of pipelines or models that are published to, and
// retrieved from, a flow registry.
//
// A flow owns its parameters, the parameters meta-info and its named components
// (sub-flows) as insertion-ordered maps; the order is significant since it defines the
// order of elements in the registry wire format. Registry assigned fields (ID, Uploader,
// Version, UploadDate and the legacy binary references) stay nil until a publish round
// trip completes and are ignored by Equal.
package flow
