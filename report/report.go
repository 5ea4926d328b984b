package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/5alad/loveemu-lab/constants"
	"github.com/5alad/loveemu-lab/model"
)

const Footer = "Note that the above dump omits bytes in between note numbers."

type Printer struct {
	w       io.Writer
	quiet   bool
	verbose bool
	count   int

	header     string
	headerDone bool
}

func New(w io.Writer, quiet, verbose bool) *Printer {
	return &Printer{w: w, quiet: quiet, verbose: verbose}
}

// Section starts a new group of matches, one per scanned file. The header
// is printed before the first match of the group, or used as a line prefix
// in quiet mode.
func (p *Printer) Section(header string) {
	p.header = header
	p.headerDone = false
}

func (p *Printer) Print(m model.Match) {
	p.count++
	if p.quiet {
		if p.header != "" {
			fmt.Fprintf(p.w, "%s: ", p.header)
		}
		fmt.Fprintf(p.w, "%08X\n", m.Offset)
		return
	}

	var sb strings.Builder
	if p.header != "" && !p.headerDone {
		fmt.Fprintf(&sb, "%s\n", p.header)
		p.headerDone = true
	}
	fmt.Fprintf(&sb, "- %08X:", m.Offset)
	for _, b := range m.Bytes {
		fmt.Fprintf(&sb, " %02X", b)
	}
	sb.WriteByte('\n')

	if p.verbose {
		sb.WriteString("  @")
		for _, span := range m.Spans {
			if span.First == span.Last {
				fmt.Fprintf(&sb, " +%d", span.First)
			} else {
				fmt.Fprintf(&sb, " +%d..%d", span.First, span.Last)
			}
		}
		sb.WriteByte('\n')
	}
	io.WriteString(p.w, sb.String())
}

func (p *Printer) Count() int {
	return p.count
}

// Finish prints the footer once, after at least one match in normal mode.
func (p *Printer) Finish() {
	if p.count == 0 || p.quiet {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", Footer)
}

// Usage writes the long help shown by --help and on a wrong argument count.
func Usage(w io.Writer, command string) {
	fmt.Fprintf(w, "Small utility to search a byte sequence by melody.\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Note:\n")
	fmt.Fprintf(w, "The search engine uses only the key of notes.\n")
	fmt.Fprintf(w, "Others, such as lengths, will be ignored.\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Syntax:\n")
	fmt.Fprintf(w, "  %s (options) [input file] [MML]\n", command)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  --help          show this help\n")
	fmt.Fprintf(w, "  -q              quiet mode, prints only errors and offsets\n")
	fmt.Fprintf(w, "  -l<length>      max distance between notes (in bytes) (default: -l%d)\n", constants.GetDefaultNoteGap())
	fmt.Fprintf(w, "  --midi <file>   read the melody from a MIDI file instead of MML\n")
}
