// Package commands implements the weburl command line interface.
//
//	weburl inspect https://example.com/a?b=1#c
//	weburl params "https://example.com/?a=1&a=2&flag" -o json
//	weburl with https://example.com/search q=go page=2
//	weburl anticache https://example.com/feed.json
//	weburl strip --hash https://example.com/a#section
//	weburl xhr https://api.example.com/items#top
//	weburl open --anti-cache https://example.com/
//	weburl probe --method GET https://example.com/ https://example.com/health
//	weburl config set location https://app.example.com/
//	weburl config edit
//
// Root flags are merged over the configuration file (see package config);
// only flags given on the command line override it.
package commands
