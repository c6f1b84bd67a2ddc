package htmltable_test

import (
	"fmt"

	"github.com/matzehuels/mailgrid/pkg/grid"
	"github.com/matzehuels/mailgrid/pkg/layer"
	"github.com/matzehuels/mailgrid/pkg/render/htmltable"
)

func ExampleRender() {
	layers := []layer.Layer{{ID: "hero", X1: 0, Y1: 0, X2: 100, Y2: 50}}
	table := grid.Build(layers, grid.Root(100, 50, 0))

	fmt.Print(htmltable.Render(table))
	// Output:
	// <table style="border-collapse:collapse;table-layout:fixed;width:100px;height:50px;margin:auto;" border="0" width="100" height="50">
	//     <tr>
	//         <td style="vertical-align:top;padding:0px;width:100px;height:50px;" colspan="1" rowspan="1">
	//             <div style="display:block;width:100px;height:50px;">
	//             </div>
	//         </td>
	//     </tr>
	// </table>
}

func ExampleInspect() {
	layers := []layer.Layer{
		{ID: "a", X1: 0, Y1: 0, X2: 50, Y2: 50},
		{ID: "b", X1: 50, Y1: 0, X2: 100, Y2: 50},
	}
	markup := htmltable.Render(grid.Build(layers, grid.Root(100, 80, 0)))

	st, err := htmltable.Inspect(markup)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("tables=%d cells=%d placeholders=%d\n", st.Tables, st.Cells, st.Placeholders)
	// Output:
	// tables=1 cells=3 placeholders=1
}
