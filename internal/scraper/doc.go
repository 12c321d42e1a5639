// Package scraper fetches statistics-site pages for the draft pipeline.
//
// A Fetcher is built from one immutable HTTP configuration (User-Agent,
// extra headers, timeout, retries). Every fetch is bounded by the timeout and
// any network error or non-2xx status comes back as a match.ErrFetchFailed
// error naming the URL. Bodies are decoded to UTF-8 according to their
// Content-Type and parsed into a goquery document whose Url is the page URL.
//
// Bodies are cached per URL for the lifetime of the Fetcher, so a series page
// that doubles as its first game page is requested once.
package scraper
