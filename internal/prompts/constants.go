// Package prompts contains the descriptions read by the agent calling the tools.
package prompts

// OperatingProcedure is the frugal exploration procedure shared by every tool description.
const OperatingProcedure = `Never read an entire file unless strictly necessary. Explore in this order:
1. ListFiles: orient yourself in a directory.
2. FindFiles: locate files by name pattern (*.env, *secret*, *.py) across the tree.
3. ReadPreview: understand the shape of an interesting file from its head and tail.
4. GrepSearch: search a keyword in ONE known file.
5. GrepRecursive: search a keyword in ALL files under a directory.

Looking for a kind of file (e.g. config): use FindFiles with a pattern.
Looking for a keyword in a known file: use GrepSearch.
Looking for a keyword without knowing where: use GrepRecursive.
Pass use_regex=true for complex patterns (e.g. "sk_live_[0-9]+"). Matching is always case-insensitive.

Example: "find the Stripe API key"
-> GrepRecursive(directory=".", keyword="sk_live_", pattern="*.env")`

// Exploration tool descriptions
const (
	// ListFilesToolDescription is the description for the ListFiles tool
	ListFilesToolDescription = `Lists the immediate contents of a directory. Start here.

- directory: path to list, defaults to the current directory
- Directories are shown with a trailing "/", files with their size in KB
- Version control, dependency and cache directories (.git, node_modules, __pycache__, ...) are hidden
- Output is capped; use FindFiles to look deeper

` + OperatingProcedure

	// FindFilesToolDescription is the description for the FindFiles tool
	FindFilesToolDescription = `Recursively finds files whose base name matches a glob pattern.

- directory: root of the search, defaults to the current directory
- pattern: glob matched against file names only (*, ?, [abc]); defaults to "*"
- max_results: cap on the number of paths returned
- Results are relative to the directory and include sizes
- Dotfile patterns are forgiving: "*.env" also finds ".env" and ".env.local"
- Ignored directories (.git, node_modules, ...) are never searched`

	// ReadPreviewToolDescription is the description for the ReadPreview tool
	ReadPreviewToolDescription = `Shows the first and last lines of a file, with a marker for the skipped middle.

- filepath: file to preview
- Short files are returned whole
- Very large files are refused; search them with GrepSearch or GrepRecursive instead
- Use this to understand a file's structure before searching it`

	// GrepSearchToolDescription is the description for the GrepSearch tool
	GrepSearchToolDescription = `Searches ONE file for a keyword and returns the first matches with surrounding lines.

- filepath: file to search
- keyword: text to find, case-insensitive
- context: lines of context around each match (default 2)
- use_regex: treat keyword as a regular expression
- Only the first few matches are returned; refine the keyword if the limit is reached`

	// GrepRecursiveToolDescription is the description for the GrepRecursive tool
	GrepRecursiveToolDescription = `Searches every text file under a directory for a keyword. Use when you do not know which file holds it.

- directory: root of the search, defaults to the current directory
- keyword: text to find, case-insensitive
- pattern: glob restricting which file names are searched (default "*")
- context: lines of context around each match (default 1)
- use_regex: treat keyword as a regular expression
- max_files / max_matches: stop after this many files with matches or total matches
- Binary files, large files and ignored directories are skipped
- Narrow the search with pattern or directory when the limits are reached`
)
