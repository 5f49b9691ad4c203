// Package enrich labels tweet records and attaches embeddings.
//
// A run has two stages. The classification stage calls the classifier once
// per record through a worker pool that never has more than K calls
// outstanding; failures are turned into Failed outcomes and logged, and the
// run continues. The embedding stage sends the text of every surviving record
// to the embedder in a single call and pairs vector i with record i.
//
//	p, err := enrich.NewPipeline(provider.Classifier(), provider.Embedder(),
//	    enrich.WithConcurrency(10),
//	)
//	enriched, stats, err := p.Run(ctx, records)
//
// Only an embedding failure is fatal. No call is ever retried.
package enrich
