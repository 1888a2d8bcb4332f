package server

// dashboardPage is the single page shell: symbol and interval controls,
// view option checkboxes, the signal badge and the chart iframe. A timer
// and every control change reload the iframe and the snapshot JSON.
const dashboardPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Crypto Candlestick Dashboard</title>
<style>
  body { background-color: #121212; color: #ffffff; font-family: Arial, sans-serif; padding: 20px; margin: 0; }
  h1 { text-align: center; font-size: 32px; }
  .controls { display: flex; justify-content: center; align-items: center; gap: 16px; flex-wrap: wrap; margin-bottom: 12px; }
  .controls select { width: 180px; color: #000; padding: 4px; }
  .options { text-align: center; margin-bottom: 12px; }
  .options label { margin-right: 14px; }
  .signal-row { text-align: center; margin-bottom: 8px; }
  .badge { display: inline-block; padding: 4px 12px; border-radius: 4px; font-weight: bold; }
  .badge.buy { background: #1b5e20; color: lime; }
  .badge.sell { background: #7f1d1d; color: red; }
  .badge.none { background: #333333; color: #cccccc; }
  .badge.no_data { background: #555555; color: #eeeeee; }
  #signal-reason { margin-left: 10px; color: #aaaaaa; }
  #window-range { text-align: center; color: #aaaaaa; margin-bottom: 8px; min-height: 1.2em; }
  #error-message { color: red; text-align: center; min-height: 1.2em; }
  iframe { width: 100%; height: 680px; border: 0; background-color: #121212; }
</style>
</head>
<body>
<h1>&#128202; Crypto Candlestick Dashboard</h1>
<div class="controls">
  <label for="symbol">Symbol</label>
  <select id="symbol">
    {{range .Symbols}}<option value="{{.}}"{{if eq . $.DefaultSymbol}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <label for="interval">Interval</label>
  <select id="interval">
    {{range .Intervals}}<option value="{{.}}"{{if eq . $.DefaultInterval}} selected{{end}}>{{.}}</option>{{end}}
  </select>
</div>
<div class="options">
  View options:
  {{range .Layers}}<label><input type="checkbox" name="layer" value="{{.Value}}"{{if .Checked}} checked{{end}}> {{.Label}}</label>{{end}}
</div>
<div class="signal-row">Signal: <span id="signal-badge" class="badge none">NONE</span><span id="signal-reason"></span></div>
<div id="window-range"></div>
<div id="error-message"></div>
<iframe id="chart" src="/chart"></iframe>
<script>
var refreshEvery = {{.RefreshMillis}};
function params() {
  var layers = [];
  var boxes = document.querySelectorAll('input[name=layer]:checked');
  for (var i = 0; i < boxes.length; i++) { layers.push(boxes[i].value); }
  return 'symbol=' + encodeURIComponent(document.getElementById('symbol').value) +
    '&interval=' + encodeURIComponent(document.getElementById('interval').value) +
    '&layers=' + encodeURIComponent(layers.join(','));
}
function refresh() {
  var query = params();
  document.getElementById('chart').src = '/chart?' + query;
  fetch('/api/v1/snapshot?' + query)
    .then(function (r) { return r.json(); })
    .then(function (snap) {
      var badge = document.getElementById('signal-badge');
      badge.textContent = snap.signal;
      badge.className = 'badge ' + snap.signal.toLowerCase();
      document.getElementById('signal-reason').textContent = snap.reason || '';
      var range = '';
      if (typeof snap.window_high === 'number' && typeof snap.window_low === 'number') {
        range = 'Window high ' + snap.window_high.toFixed(2) + ' / low ' + snap.window_low.toFixed(2);
      }
      document.getElementById('window-range').textContent = range;
      document.getElementById('error-message').textContent = snap.error || '';
    })
    .catch(function () {
      document.getElementById('error-message').textContent = '{{.ErrorText}}';
    });
}
document.getElementById('symbol').addEventListener('change', refresh);
document.getElementById('interval').addEventListener('change', refresh);
var layerBoxes = document.querySelectorAll('input[name=layer]');
for (var i = 0; i < layerBoxes.length; i++) { layerBoxes[i].addEventListener('change', refresh); }
setInterval(refresh, refreshEvery);
refresh();
</script>
</body>
</html>
`
