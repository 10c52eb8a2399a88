package main

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// renderHTML converts a puzzle page into readable terminal text. Only the
// <article> elements are rendered when present; the site wraps each puzzle
// part in one, so the page chrome drops away. The conversion is pure and
// deterministic, which keeps cached statements stable.
func renderHTML(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	roots := findElements(doc, "article")
	if len(roots) == 0 {
		roots = []*html.Node{doc}
	}
	var blocks []string
	for _, root := range roots {
		blocks = append(blocks, blockText(root)...)
	}
	return strings.Join(blocks, "\n\n"), nil
}

func findElements(n *html.Node, name string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == name {
			found = append(found, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// blockText renders the element's children as blank-line separated blocks.
func blockText(n *html.Node) []string {
	var blocks []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode:
			switch c.Data {
			case "script", "style":
			case "p", "h1", "h2", "h3", "h4":
				if t := inlineText(c); t != "" {
					blocks = append(blocks, t)
				}
			case "ul", "ol":
				if t := listText(c); t != "" {
					blocks = append(blocks, t)
				}
			case "pre":
				blocks = append(blocks, codeBlock(c))
			default:
				blocks = append(blocks, blockText(c)...)
			}
		case c.Type == html.TextNode:
			if t := collapseSpace(c.Data); t != "" {
				blocks = append(blocks, t)
			}
		}
	}
	return blocks
}

func listText(n *html.Node) string {
	var lines []string
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type == html.ElementNode && li.Data == "li" {
			lines = append(lines, "  - "+inlineText(li))
		}
	}
	return strings.Join(lines, "\n")
}

// codeBlock renders a <pre> body verbatim, indented four spaces. Puzzle
// examples embed positional data, so internal whitespace must survive.
func codeBlock(n *html.Node) string {
	raw := strings.TrimRight(rawText(n), "\n")
	lines := strings.Split(raw, "\n")
	for i, ln := range lines {
		lines[i] = "    " + ln
	}
	return strings.Join(lines, "\n")
}

// inlineText flattens an element onto one line, marking inline code with
// backticks and emphasis with asterisks.
func inlineText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		if node.Type != html.ElementNode {
			return
		}
		var marker string
		switch node.Data {
		case "code":
			marker = "`"
		case "em", "strong", "b", "i":
			marker = "*"
		case "script", "style":
			return
		}
		sb.WriteString(marker)
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		sb.WriteString(marker)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return collapseSpace(sb.String())
}

func rawText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
