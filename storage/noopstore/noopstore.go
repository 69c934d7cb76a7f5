// Package noopstore provides storage surfaces for contexts with no
// persistence at all (server-side rendering, headless jobs). Every read
// misses and every write vanishes; the session kit treats that the same
// as unavailable browser storage and carries on.
package noopstore

import "github.com/shiftwatch/sessionguard/storage"

var (
	_ storage.Store   = Store{}
	_ storage.Cookies = Cookies{}
)

type Store struct{}

func New() Store { return Store{} }

func (Store) Get(string) (string, bool) { return "", false }
func (Store) Set(string, string)        {}
func (Store) Delete(string)             {}

type Cookies struct{}

func NewCookies() Cookies { return Cookies{} }

func (Cookies) Get(string) (string, bool) { return "", false }
func (Cookies) Set(string, string)        {}
func (Cookies) Expire(string)             {}
