package whentext

import (
	"fmt"
	"strings"

	"github.com/ava12/llx/grammar"
	"github.com/ava12/llx/langdef"

	"github.com/whentext/whentext/locale"
)

// grammarText is the grammar description compiled once per Parser. Token
// definition order is lexicon priority: named terminals win over generic
// integers, longer names are listed before their abbreviations, and the
// word/any terminals at the bottom make the lexer total so unmatched text
// degrades to unknown nodes instead of failing the parse.
//
// The %s placeholder receives the timezone terminal alternation generated
// from the locale table.
//
// Every suffix is optional on purpose: recognition degrades to partial
// nodes that the semantic builder sorts out, rather than rejecting input.
const grammarText = `
$space = /[ \t\f\r\n]+/;
$isodate = /\d{4}-\d{1,2}-\d{1,2}/;
$ordinal = /\d{1,2}(?i:st|nd|rd|th)\b/;
$number = /\d+(?:\.\d+)?/;
$monthname = /(?i:january|february|march|april|august|september|october|november|december|june|july|sept|jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b\.?/;
$weekday = /(?i:monday|tuesday|wednesday|thursday|friday|saturday|sunday|tues|thurs|thur|mon|tue|wed|thu|fri|sat|sun)\b\.?/;
$datename = /(?i:today|tomorrow|tmw|yesterday)\b/;
$datetimename = /(?i:tonight)\b/;
$timename = /(?i:noon|midday|midnight|morning|afternoon|evening|night)\b/;
$modifier = /(?i:next|previous|last|past|preceding|this|upcoming|following)\b/;
$ordword = /(?i:first|third|fourth|fifth)\b/;
$meridiem = /(?i:[ap]\.m\.?|[ap]m\b|[ap]\b)/;
$unit = /(?i:milliseconds?|millis|ms|minutes?|mins?|hours?|hrs?|seconds?|secs?|days?|weeks?|wks?|months?|mos?|years?|yrs?|[smhdwy])\b/;
$numword = /(?i:eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety|hundred|one|two|three|four|five|six|seven|eight|nine|ten|an)\b/;
$tzname = /(?i:%s)\b/;
$word = /[a-zA-Z][a-zA-Z'.]*/;
$any = /./;

!side $space;
!caseless $monthname $weekday $datename $datetimename $timename $modifier $ordword $meridiem $unit $numword $tzname $word;

phrase = { element };
element = expression | unknown;
expression = single, { ( ( '-' | 'TO' ), [ single ] ) | ( ( ',' | 'OR' ), [ single ] ) };
single = monthdate | numberled | iso | weekdayled | named | wordnum;

monthdate = $monthname, [ $number | $ordinal ], [ ',', [ $number ] ], [ timeattach ];
iso = $isodate, [ timeattach ];

numberled = ( $number | $ordinal ), [ numtail ];
numtail = slashdate | clocktime | ampm | zoned | durtail | dayofmonth;
slashdate = '/', [ $number, [ '/', [ $number ] ] ], [ timeattach ];
clocktime = ':', [ $number ], [ ':', [ $number ] ], [ $meridiem ], [ $tzname ], [ dayref ];
ampm = $meridiem, [ $tzname ], [ dayref ];
zoned = $tzname, [ dayref ];
durtail = $unit, { durpart }, [ 'AGO' ];
durpart = ( $number | numwords ), $unit;
dayofmonth = ( $monthname, monthtail ) | ( 'OF', [ $monthname, monthtail ] );
monthtail = [ ',', [ $number ] ], [ timeattach ];

weekdayled = ( $weekday, [ wkdtail ] )
           | ( ( $modifier | $ordword ), { $modifier | $ordword }, [ ( $weekday, [ wkdtail ] ) | $unit ] );
wkdtail = ( 'OF', [ $monthname, [ $number ] ], [ timeattach ] ) | ( $tzname, [ timeattach ] ) | timeattach;

named = ( $datename, [ $tzname ], [ timeattach ] ) | $datetimename | ( $timename, [ $tzname ], [ dayref ] );

wordnum = numwords, [ $unit, { durpart }, [ 'AGO' ] ];
numwords = $numword, { $numword };

timeattach = ( ( 'AT' | '@' ), [ timecore ] ) | timecore;
timecore = ( $number, [ ':', [ $number ], [ ':', [ $number ] ] ], [ $meridiem ], [ $tzname ] )
         | $timename;
dayref = ( 'ON', [ single ] ) | $datename | $weekday;

unknown = $word | $any | $meridiem | $unit | $tzname;
`

// compileGrammar assembles the grammar text, splicing in the timezone
// terminal, and compiles it. Compilation is expensive and happens once per
// Parser; the result is immutable.
func compileGrammar() (*grammar.Grammar, error) {
	text := fmt.Sprintf(grammarText, strings.Join(locale.ZoneNames(), "|"))
	g, err := langdef.ParseString("whentext.llx", text)
	if err != nil {
		return nil, fmt.Errorf("whentext: compiling grammar: %w", err)
	}
	return g, nil
}
