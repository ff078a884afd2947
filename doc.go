// Package blog loads markdown posts from a content directory, segments them
// into typed content blocks and renders them to HTML.
//
// A Module is built from a Config:
//
//	cfg := blog.DefaultConfig()
//	cfg.Content.Dir = "content/posts"
//	module, err := blog.New(cfg)
//	if err != nil {
//		return err
//	}
//	collection, report, err := module.LoadCollection(ctx)
//
// Documents that fail to parse are skipped and listed in the LoadReport.
package blog
