package view

// RenderList replaces the list content with items and shows the wrapper;
// nil or empty items hide the wrapper and leave the list empty.
func RenderList(list *List, wrapper *Element, items []string) {
	list.Items = nil
	if len(items) == 0 {
		wrapper.Hidden = true
		return
	}
	list.Items = make([]string, 0, len(items))
	list.Items = append(list.Items, items...)
	wrapper.Hidden = false
}
