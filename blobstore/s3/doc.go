// Package s3 reads catalog files from Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "star-catalogs",
//	    s3.WithPrefix("release-7/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	loader := catalog.NewLoader(store, cat)
//
// # Features
//
//   - Whole files are downloaded with parallel ranged GETs
//   - Range reads for partial fetches
//   - Automatic pagination for listing
//   - Configurable prefix and endpoint for S3-compatible services
package s3
