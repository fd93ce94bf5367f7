package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/layout"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	HeadingFg   tcell.Color
	BulletFg    tcell.Color
	QuoteFg     tcell.Color
	BorderFg    tcell.Color
	RuleFg      tcell.Color
	CodeBg      tcell.Color
	CodeFg      tcell.Color
	CodeBlockBg tcell.Color
	CodeBlockFg tcell.Color
	ErrorFg     tcell.Color
	BookmarkFg  tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		HeadingFg:   tcell.Color33,
		BulletFg:    tcell.Color33,
		QuoteFg:     tcell.ColorLightSlateGray,
		BorderFg:    tcell.ColorLightSlateGray,
		RuleFg:      tcell.ColorLightSlateGray,
		CodeBg:      tcell.ColorDefault,
		CodeFg:      tcell.Color44,  // brighter cyan text for code
		CodeBlockBg: tcell.Color234, // darker grey background for fenced code
		CodeBlockFg: tcell.Color252, // light grey text for fenced code
		ErrorFg:     tcell.ColorRed,
		BookmarkFg:  tcell.ColorYellow,
	}
}

func (r *Renderer) styleForSegment(base tcell.Style, kind layout.Style) tcell.Style {
	switch kind {
	case layout.StyleHeading:
		return base.Foreground(r.theme.HeadingFg).Bold(true)
	case layout.StyleStrong:
		return base.Bold(true)
	case layout.StyleCode:
		return withColors(base, r.theme.CodeBg, r.theme.CodeFg)
	case layout.StyleCodeBlock:
		return withColors(base, r.theme.CodeBlockBg, r.theme.CodeBlockFg)
	case layout.StyleQuote:
		return base.Foreground(r.theme.QuoteFg).Italic(true)
	case layout.StyleBullet:
		return base.Foreground(r.theme.BulletFg)
	case layout.StyleBorder:
		return base.Foreground(r.theme.BorderFg)
	case layout.StyleRule:
		return base.Foreground(r.theme.RuleFg)
	default:
		return base
	}
}

func withColors(base tcell.Style, bg, fg tcell.Color) tcell.Style {
	style := base
	if bg != tcell.ColorDefault {
		style = style.Background(bg)
	}
	if fg != tcell.ColorDefault {
		style = style.Foreground(fg)
	}
	return style
}
