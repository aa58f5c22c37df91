// Package browser fetches rendered game pages with headless Chrome.
//
// boardgamers.space game pages are JavaScript applications that embed the
// actual game (including the advanced log) in an iframe, so a plain HTTP GET
// returns none of the log markup. The fetcher drives Chrome over the
// DevTools protocol, waits for the game iframe to appear, and extracts the
// frame's rendered HTML.
package browser
