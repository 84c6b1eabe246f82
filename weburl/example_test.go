// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package weburl_test

import (
	"fmt"
	"time"

	"github.com/jongio/weburl/weburl"
)

func ExampleParse() {
	u := weburl.Parse("http://subdomain.domain.com:8080/directory/file.html?param1=value1#hash")

	fmt.Println(u.Origin())
	fmt.Println(u.Relative())
	v, _ := u.Params().Get("param1")
	fmt.Println(v)
	fmt.Println(u.WithoutSearch())
	// Output:
	// http://subdomain.domain.com:8080
	// /directory/file.html?param1=value1#hash
	// value1
	// http://subdomain.domain.com:8080/directory/file.html#hash
}

func ExampleURL_FormatForXHR() {
	env := weburl.NewEnvironment(
		weburl.WithLocation(weburl.StaticLocation("https://app.example.com/")),
		weburl.WithClock(weburl.FixedClock(time.UnixMilli(1700000000000))),
	)
	u := env.Parse("https://api.example.com/items?page=2#top")

	fmt.Println(u.FormatForXHR(false))
	fmt.Println(u.FormatForXHR(true))
	fmt.Println(u.IsCrossOrigin())
	// Output:
	// https://api.example.com/items?page=2
	// https://api.example.com/items?_=loyw3v28&page=2
	// true
}

func ExampleStringify() {
	p := weburl.NewParams()
	p.Set("q", "go url")
	p.SetList("tag", "b", "a")
	p.SetNull("debug")

	fmt.Println(weburl.Stringify(p))
	// Output: debug&q=go%20url&tag=a&tag=b
}
