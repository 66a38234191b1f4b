// Package md2blog publishes folders of markdown articles as a static blog.
//
// # Quick Start
//
//	site := md2blog.SiteConfig{
//	    RootDir:     "/var/www/html",
//	    PostsDir:    "/var/www/html/posts",
//	    AssetsDir:   "/var/www/html/assets",
//	    LogDir:      "/home/me/blog/logs",
//	    MarkdownDir: "/home/me/blog/markdown-posts",
//	}
//
//	pub, err := md2blog.NewPublisher(site)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := pub.Run(ctx)
//
// # Publishing
//
// Every directory of MarkdownDir whose name does not contain ".PROCESSED." is
// a source folder: markdown files plus the images and files they reference.
// For each article the publisher:
//
//  1. Renders the markdown (Goldmark) and takes the first h3 as the title
//  2. Copies the folder's other files to AssetsDir/<slug>/
//  3. Writes PostsDir/<slug>.html, a copy of the homepage with the article
//     in its content container
//  4. Inserts or replaces the preview card <div id="<slug>"> on the homepage
//
// The slug is the title lower-cased with spaces turned into hyphens. Once a
// folder is fully published it is renamed ".PROCESSED.<name>" and never read
// again. A folder that fails stays as it is and is retried on the next run.
//
// # Removal
//
// Remover deletes the preview card, the article page and the asset directory
// of a title. A title without a preview card is reported as not found.
//
// # Setup
//
// Scaffold creates the directories and writes a starter homepage and
// stylesheet. The homepage must keep one <h1> and a first <div> that holds
// the preview cards.
//
// # Audit Log
//
// Publications and removals are recorded one per line in LogDir/blog.log:
//
//	03/07/2024 14:05:09 - Post hello.md --> hello-world.html went public in posts dir.
package md2blog
