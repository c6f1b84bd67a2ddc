package htmltable

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mailgrid/pkg/css"
	"github.com/matzehuels/mailgrid/pkg/grid"
)

const documentHead = `<!doctype html>
<html style="margin: 0; padding: 0px;">
<head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta content="text/html; charset=utf-8" http-equiv="Content-Type">
    <!--[if !mso]><!-- -->
    <meta http-equiv="X-UA-Compatible" content="IE=edge" />
    <!--<![endif]-->
    <style type="text/css">
        body{
            margin:0;
            padding:0;
            line-height: 1;
        }
        img{
            border:0 none;
            height:auto;
            line-height:100%;
            outline:none;
            text-decoration:none;
            display:block;
        }
        a img{
            border:0 none;
        }
        table, td{
            border-collapse: collapse;
            border-spacing: 0;
            padding:0px;
        }
        #bodyTable{
            height:100% !important;
            margin:0;
            padding:0;
            width:100% !important;
        }
    </style>
</head>
`

const documentTail = `            </td>
        </tr>
    </table>
</body>
</html>
`

// Document wraps rendered table markup in the email boilerplate. The
// background color is applied to <body> and the full-size outer table.
func Document(background css.Color, body string) string {
	bg := background.Hex()
	var buf bytes.Buffer
	buf.WriteString(documentHead)
	fmt.Fprintf(&buf, `<body bgcolor="%s" style="padding:0px;margin:0px;">`+"\n", bg)
	fmt.Fprintf(&buf, `    <table id="bodyTable" bgcolor="%s" style="width: 100%%; height: 100%%; background-color: %s; margin: 0; padding:0;">`+"\n", bg, bg)
	buf.WriteString("        <tr>\n")
	buf.WriteString(`            <td style="text-align: center;" valign="top">` + "\n")
	buf.WriteString(body)
	buf.WriteString(documentTail)
	return buf.String()
}

// RenderDocument renders t and wraps it with Document.
func RenderDocument(background css.Color, t *grid.Table, opts ...Option) string {
	return Document(background, Render(t, opts...))
}
