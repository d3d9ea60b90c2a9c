// Package configsource loads the configuration document the schema registry
// builds configuration-declared schemas from.
//
// Three sources exist:
//
//   - FileSource reads msio.json next to the running executable and falls back
//     to a bundled copy (WithFallback). With Watch it keeps the contents cached
//     until fsnotify reports a change.
//   - ObjectSource reads the document from a MinIO bucket.
//   - Static returns fixed bytes.
//
// A missing document is reported as ErrNotFound; the registry treats that as
// "no configuration" rather than a failure.
//
//	//go:embed msio.json
//	var bundled []byte
//
//	src, err := configsource.NewFileSource(configsource.Config{Watch: true})
//	if err != nil {
//		return err
//	}
//	src = src.WithFallback(bundled)
//	defer src.Close()
package configsource
