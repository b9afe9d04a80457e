package listing

import "fmt"

// MainKey is the listing key of the global feed.
const MainKey = "main_post_list"

// GroupKey is the listing key of a group feed.
func GroupKey(slug string) string {
	return fmt.Sprintf("gr[%s]_post_list", slug)
}

// ProfileKey is the listing key of an author's feed.
func ProfileKey(username string) string {
	return fmt.Sprintf("pf[%s]_post_list", username)
}
