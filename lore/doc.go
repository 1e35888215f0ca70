// Package lore imports entity descriptions from web pages and local HTML
// files, such as campaign wikis and published lore articles.
//
// # Overview
//
// An import fetches a page, extracts the readable article from it, converts
// the article to markdown, and stores the result as the entity's description.
// The source URL is recorded on the entity under the "lore_source" property
// so a description can be traced back to the page it came from.
//
// # Architecture
//
// The package consists of three components:
//
//   - Fetcher: HTTP client with SSRF protection and a response size cap
//   - Extractor: readability-based article extraction and markdown conversion
//   - Importer: orchestrates fetch, extract, and world updates
//
// # Security
//
// The fetcher implements multiple layers of SSRF protection:
//
//   - URL validation requiring HTTPS
//   - Private IP and localhost blocking
//   - DNS rebinding protection via custom dialer
//   - IPv6-mapped IPv4 address detection
//   - Redirect chain validation
//
// Local files bypass the fetcher entirely and only need a .html or .htm
// extension.
//
// # Usage
//
//	fetcher := lore.NewFetcher(30*time.Second, "worldgraph-lore/1.0", 10<<20)
//	importer := lore.NewImporter(fetcher, logger)
//
//	result, err := importer.Import(ctx, w, "Eldor", "https://wiki.example.org/Eldor")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("imported %q (%d chars)\n", result.Title, len(result.Markdown))
package lore
