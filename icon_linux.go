//go:build linux && !console

package main

/*
#cgo pkg-config: gtk+-3.0
#include <gtk/gtk.h>
#include <stdlib.h>

int set_window_icon_from_data(GtkWindow *window, const unsigned char *data, int len) {
    if (!data || len <= 0) {
        return 0;
    }

    GError *error = NULL;
    GdkPixbufLoader *loader = gdk_pixbuf_loader_new();
    if (!gdk_pixbuf_loader_write(loader, data, len, &error)) {
        if (error) g_error_free(error);
        g_object_unref(loader);
        return 0;
    }
    if (!gdk_pixbuf_loader_close(loader, &error)) {
        if (error) g_error_free(error);
        g_object_unref(loader);
        return 0;
    }

    GdkPixbuf *pixbuf = gdk_pixbuf_loader_get_pixbuf(loader);
    if (!pixbuf) {
        g_object_unref(loader);
        return 0;
    }

    GList *icon_list = NULL;
    icon_list = g_list_append(icon_list, pixbuf);
    gtk_window_set_default_icon_list(icon_list);
    g_list_free(icon_list);

    if (window) {
        gtk_window_set_icon(window, pixbuf);
    }

    g_object_unref(loader);
    return 1;
}

void set_app_id(const char *app_id) {
    g_set_prgname(app_id);
    g_set_application_name("Compound Interest Visualizer");
}
*/
import "C"

import (
	_ "embed"
	"unsafe"
)

//go:embed assets/icon.png
var iconPNG []byte

// appID groups the window under one taskbar entry
const appID = "compound-interest"

var iconInitialized = false

// SetWindowIcon installs the chart icon on the GTK window and as the GTK default
func SetWindowIcon(windowPtr unsafe.Pointer) {
	if iconInitialized || len(iconPNG) == 0 {
		return
	}
	iconInitialized = true

	id := C.CString(appID)
	C.set_app_id(id)
	C.free(unsafe.Pointer(id))

	var window *C.GtkWindow
	if windowPtr != nil {
		window = (*C.GtkWindow)(windowPtr)
	}
	C.set_window_icon_from_data(window, (*C.uchar)(unsafe.Pointer(&iconPNG[0])), C.int(len(iconPNG)))
}
