package server

const pageTemplateName = "index"

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ERC-20 Token Indexer</title>
{{if .Busy}}<meta http-equiv="refresh" content="2">{{end}}
</head>
<body>
<form method="post" action="/connect">
  <button type="submit">{{if .ConnectedAddress}}{{.ConnectedAddress}}{{else}}Connect Wallet{{end}}</button>
</form>
<h1>ERC-20 Token Indexer</h1>
<p>Plug in an address and this page will return all of its ERC-20 token balances!</p>
{{if .Error}}<p role="alert"><b>{{.Error}}</b></p>{{end}}
<h2>Get all the ERC-20 token balances of this address:</h2>
<form method="post" action="/query">
  <input name="address" size="50" value="{{.Address}}">
  <button type="submit">Check ERC-20 Token Balances</button>
</form>
<h2>ERC-20 token balances:</h2>
{{if .Busy}}
<p>Loading... {{.Phase}}{{if .Pending}} ({{.Pending}} tokens){{end}}</p>
{{else if .Queried}}
<div>
{{range .Tokens}}
  <div id="{{.ID}}">
    <div><b>Symbol:</b> {{.Symbol}}</div>
    <div><b>Balance:</b> {{.Balance}}</div>
    {{if .Logo}}<img src="{{.Logo}}" alt="{{.Symbol}}" width="32" height="32">{{end}}
  </div>
{{end}}
</div>
{{else}}
<p>Please make a query! This may take a few seconds...</p>
{{end}}
</body>
</html>
`
